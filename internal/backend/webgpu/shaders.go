//go:build windows

package webgpu

// WGSL compute shader for statevector gate application.
// Using a string constant instead of embed for simplicity.

// workgroupSize is the number of threads per workgroup.
const workgroupSize = 256

// gateShader applies a 2x2 unitary to every amplitude pair split by the
// target qubit. Amplitudes are interleaved f32 (re, im). A nonzero
// ctrl_mask restricts the update to pairs whose base index has every
// control bit set, which covers the controlled gate kinds with the same
// kernel.
const gateShader = `
@group(0) @binding(0) var<storage, read_write> state: array<f32>;

struct Params {
    pair_count: u32,
    target_bit: u32,
    ctrl_mask: u32,
    _pad: u32,
    m00: vec2f,
    m01: vec2f,
    m10: vec2f,
    m11: vec2f,
}
@group(0) @binding(1) var<uniform> params: Params;

fn cmul(a: vec2f, b: vec2f) -> vec2f {
    return vec2f(a.x * b.x - a.y * b.y, a.x * b.y + a.y * b.x);
}

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let p = global_id.x;
    if (p >= params.pair_count) {
        return;
    }
    let stride = 1u << params.target_bit;
    let low = p & (stride - 1u);
    let high = (p >> params.target_bit) << (params.target_bit + 1u);
    let i0 = high | low;
    if ((i0 & params.ctrl_mask) != params.ctrl_mask) {
        return;
    }
    let i1 = i0 | stride;
    let a0 = vec2f(state[2u * i0], state[2u * i0 + 1u]);
    let a1 = vec2f(state[2u * i1], state[2u * i1 + 1u]);
    let r0 = cmul(params.m00, a0) + cmul(params.m01, a1);
    let r1 = cmul(params.m10, a0) + cmul(params.m11, a1);
    state[2u * i0] = r0.x;
    state[2u * i0 + 1u] = r0.y;
    state[2u * i1] = r1.x;
    state[2u * i1 + 1u] = r1.y;
}
`
